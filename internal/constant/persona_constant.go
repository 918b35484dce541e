package constant

// Copy rendered by the portfolio commands. Kept in one place so the command
// handlers and the assistant knowledge base stay in sync.

const AboutText = `Hi there. My name's Ben, and I currently head up AI & Machine Learning at Motorway, leading teams that build applied AI products powering the UK's fastest-growing used vehicle marketplace. My work sits at the intersection of AI, product, and engineering, turning complex machine learning and AI into reliable, safe, and commercially impactful solutions.

In addition to my day job, I advise startups on AI, ML, and data science strategy, helping them design, build, and operationalise intelligent systems, and have spoken at a number of conferences including as a main stage speaker at Google Cloud's London Summit in 2024 and Big Data London in 2025.

Before Motorway, I led ML at computer vision startup DeGould and worked as a technical consultant for 4 years across Accenture, Anglo American, and the UK's Ministry of Defence. My consulting experiences allowed me to hone my ability to spot commercial opportunity, and I take pride in ensuring every AI initiative is grounded in adding real business or user value.

With a hands-on foundation in data science and ML engineering, my focus more recently has been on delivering transformational experiences with agentic generative AI systems. I'm passionate about building high-performing teams and creating ethical, scalable AI systems that drive real impact.`

const AboutClosing = `Want to know more? Just ask a question here, and my assistant will do its best to help!`

const ContactText = `Get in touch:

  Email     btjones.me+contact@gmail.com
  GitHub    https://github.com/btjones-me
  LinkedIn  https://www.linkedin.com/in/benthomasjones/`

const ProjectsText = `Selected projects:

  portfolio-terminal   This site. A terminal-styled portfolio with an LLM-backed assistant.
                       https://github.com/btjones-me

  vehicle-intel        Applied AI products for vehicle condition, pricing, and imaging at Motorway.

  talks                Conference talks on applied and agentic AI, including Google Cloud London
                       Summit 2024 and Big Data London 2025.

Type 'chat' to ask about any of these in more detail.`

const ChatStartText = `🤖 Entering chat mode! Ask me anything about Ben's experience, skills, or background. Type 'exit' or 'end' to return to command mode, or 'help' to see chat tips.`

const ChatEndText = `Exited chat mode. Type 'help' to see available commands.`

const ChatTipsText = `Chat tips:

  - Ask about Ben's experience, skills, projects, or background.
  - Keep questions short and specific for the best answers.
  - Type 'exit' or 'end' to return to command mode.`

const ChatUnavailableText = `We seem to be having a bit of trouble on our end - sorry about that. Try 'help' to see available commands.`

const ChatTroubleText = `Sorry, I'm having trouble responding right now. Please try again.`

const ChatBurstLimitText = `You're sending messages a bit fast. Give it a few seconds and try again.`

const ChatDailyLimitTextFmt = `You've reached today's chat limit of %d messages. Come back tomorrow, or reach Ben directly via 'contact'.`

const EmptyCommandText = `Type a command to get started.`

const MsgUsageText = `Usage: msg <your message>. Example: msg Hi Ben, let's talk about AI.`

const MsgSentText = `Message sent! Ben will get back to you soon.`

const MsgFailedText = `Sorry, your message could not be sent right now. Try the details from 'contact' instead.`

const CVDownloadText = `Opening CV download in a new tab...`

const CVMissingText = `CV file missing. Replace 'static/files/demo_cv.pdf' with your actual resume.`

const CVAttachmentName = "benjamin_jones_cv.pdf"
